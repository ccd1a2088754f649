package main

import (
	"log"

	"github.com/globetraiteurs/plats/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
