package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/inbackru/v35-sub000/internal"
)

func main() {
	query := flag.String("query", "", "выполнить один запрос каталога (параметры в формате query string, например 'rooms=2&price_max=5')")
	asJSON := flag.Bool("json", false, "вывести результат запроса в JSON")
	flag.Parse()

	if *query != "" {
		runQuery(*query, *asJSON)
		return
	}

	application, err := internal.NewApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Application run failed: %v", err)
	}
}

func runQuery(rawQuery string, asJSON bool) {
	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		log.Fatalf("Invalid query string: %v", err)
	}

	application, err := internal.NewQueryApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	result := application.RunQuery(context.Background(), params)

	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			log.Fatalf("Failed to encode result: %v", err)
		}
		return
	}

	fmt.Println(result.ResultText)
	for _, item := range result.Results {
		line := fmt.Sprintf("%d | %s | %d ₽", item.ID, item.DisplayTitle(), item.Price)
		if item.Cashback > 0 {
			line += fmt.Sprintf(" | кешбэк %d ₽", item.Cashback)
		}
		fmt.Println(line)
	}
}
