package main

import "campus-events/cmd/server"

func main() {
	server.Init()
	server.Run()
}
