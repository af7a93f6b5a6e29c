package main

import (
	"predictions-api/app"

	_ "predictions-api/docs"
)

// @title           Predictions League API
// @version         1.0
// @description     Backend for the sports prediction league.

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
