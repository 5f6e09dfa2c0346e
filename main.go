package main

import "github.com/thereayou/skillbridge/cmd/server"

func main() {
	server.NewServer().Run()
}
