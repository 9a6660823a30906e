package main

import "github.com/yaptide/chipstack/cli"

func main() {
	cli.Launch()
}
