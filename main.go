/*
Copyright © 2019 NAME HERE <EMAIL ADDRESS>

*/
package main

import "github.com/AeroNotix/sockstat/cmd"

func main() {
	cmd.Execute()
}
