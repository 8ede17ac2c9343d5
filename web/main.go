package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	timeout := flag.Duration("timeout", server.DefaultRenderTimeout, "Maximum time spent on one render request")
	flag.Parse()

	webServer := server.NewServer(*port, *timeout, log.Default())

	log.Printf("Path Tracer Web Server")
	log.Printf("Visit http://localhost:%d/api/scenes to list scenes", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
