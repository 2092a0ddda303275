package main

import "gestalba/internal/app"

// @title           Gestalba API
// @version         1.0
// @description     Business management backend: users, clients, projects and delivery notes with PDF generation and IPFS e-signature.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	app.Run()
}
