package main

import "bilingual-export/internal/cli"

func main() {
	cli.Execute()
}
