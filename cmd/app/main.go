package main

import (
	"freight-marketplace-api/app"
)

func main() {
	app.Run()
}
