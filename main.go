package main

import "reviewlens/cmd/handlers"

func main() {
	handlers.Execute()
}
