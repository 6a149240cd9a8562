package main

import "chatlink_backend/internal/app"

func main() {
	app.Run()
}
