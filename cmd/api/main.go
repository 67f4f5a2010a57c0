package main

// @title MedSpace API
// @version 1.0
// @description Patient accounts, appointments and newsletter for the MedSpace clinic.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.basic BasicAuth
func main() {
	cfg := LoadConfiguration()

	app := NewApp(cfg)
	app.InitializeServer()
	app.StartServer()
}
