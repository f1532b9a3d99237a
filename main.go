package main

import "promptbuilder-backend/cmd"

// @title Prompt Builder API
// @version 1.0
// @description Store prompt templates with {placeholders}, fill them in, and generate new prompts with Gemini.

// @host localhost:5000
// @BasePath /

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

func main() {
	cmd.Execute()
}
