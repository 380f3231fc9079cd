package main

import (
	"log"

	"invoicedesk/internal/cli"

	"github.com/joho/godotenv"
)

// @title           InvoiceDesk API
// @version         1.0
// @description     Multi-tenant invoice, proforma, bill and chalan generator.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	cli.Execute()
}
