// Package sheets читает фид объявлений из Google-таблицы.
// Исторически основной формат фида: менеджеры застройщиков ведут
// выгрузки именно в таблицах.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/inbackru/v35-sub000/internal/core/domain"
)

// Ожидаемый порядок колонок листа. Первая строка считается шапкой,
// если её первая ячейка не число.
const (
	colID = iota
	colRooms
	colArea
	colFloor
	colBuildingFloors
	colPrice
	colPricePerM2
	colProject
	colDeveloper
	colBuilding
	colCompletionYear
	colProjectYear
	colCompletionQuarter
	colAddress
	colGreenMortgage
	colAccredited
	colRenovation
	colTradeIn
	colObjectClass
	colCount
)

// FeedReader реализует FeedFetcherPort поверх Google Sheets.
type FeedReader struct {
	service *sheets.Service
}

// NewFeedReader создает сервис Sheets из JSON сервис-аккаунта:
// файл по пути credentialsPath либо переменная окружения
// GOOGLE_SHEETS_CREDENTIALS.
func NewFeedReader(ctx context.Context, credentialsPath string) (*FeedReader, error) {
	var credsJSON []byte
	var err error

	if credentialsPath != "" {
		credsJSON, err = os.ReadFile(credentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
	} else {
		credsEnv := strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_CREDENTIALS"))
		if credsEnv == "" {
			return nil, fmt.Errorf("credentials not found: GOOGLE_SHEETS_CREDENTIALS is empty or not set")
		}
		credsJSON = []byte(credsEnv)
	}

	var creds map[string]interface{}
	if err := json.Unmarshal(credsJSON, &creds); err != nil {
		return nil, fmt.Errorf("invalid credentials JSON: %w", err)
	}
	if creds["type"] != "service_account" {
		return nil, fmt.Errorf("credentials must be a service account JSON file, got type: %v", creds["type"])
	}

	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(credsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &FeedReader{service: service}, nil
}

// FetchListings читает весь лист за один вызов; пагинации у таблиц
// нет, поэтому курсор всегда пустой.
func (r *FeedReader) FetchListings(ctx context.Context, feed domain.FeedSpec) ([]domain.Listing, string, error) {
	if feed.SpreadsheetID == "" {
		return nil, "", fmt.Errorf("sheets feed '%s': spreadsheet id is required", feed.Name)
	}
	readRange := feed.ReadRange
	if readRange == "" {
		readRange = "A:S"
	}

	resp, err := r.service.Spreadsheets.Values.Get(feed.SpreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to read spreadsheet %s range %s: %w", feed.SpreadsheetID, readRange, err)
	}

	var listings []domain.Listing
	for i, row := range resp.Values {
		l, ok := rowToListing(row)
		if !ok {
			if i > 0 {
				log.Printf("SheetsFeed: Skipping row %d of feed '%s': no usable id\n", i+1, feed.Name)
			}
			continue // шапка листа попадает сюда же
		}
		listings = append(listings, l)
	}

	log.Printf("SheetsFeed: Fetched %d listings from feed '%s'\n", len(listings), feed.Name)
	return listings, "", nil
}

// rowToListing переводит строку листа в объявление. Разбор терпимый:
// нечитаемая ячейка оставляет поле пустым.
func rowToListing(row []interface{}) (domain.Listing, bool) {
	id, err := strconv.ParseInt(cell(row, colID), 10, 64)
	if err != nil || id <= 0 {
		return domain.Listing{}, false
	}

	l := domain.Listing{
		ID:             id,
		Project:        cell(row, colProject),
		Developer:      cell(row, colDeveloper),
		Building:       cell(row, colBuilding),
		DisplayAddress: cell(row, colAddress),
		ObjectClass:    cell(row, colObjectClass),
	}

	if n, err := strconv.Atoi(cell(row, colRooms)); err == nil && n >= 0 {
		l.Rooms = n
	}
	if v, err := strconv.ParseFloat(strings.ReplaceAll(cell(row, colArea), ",", "."), 64); err == nil && v > 0 {
		l.Area = &v
	}
	if n, err := strconv.Atoi(cell(row, colFloor)); err == nil && n >= 1 {
		l.Floor = &n
	}
	if n, err := strconv.Atoi(cell(row, colBuildingFloors)); err == nil && n >= 1 {
		l.BuildingFloors = &n
	}
	if v, err := strconv.ParseInt(cell(row, colPrice), 10, 64); err == nil && v >= 0 {
		l.Price = v
	}
	if v, err := strconv.ParseInt(cell(row, colPricePerM2), 10, 64); err == nil && v > 0 {
		l.PricePerM2 = &v
	}
	if n, err := strconv.Atoi(cell(row, colCompletionYear)); err == nil && n > 0 {
		l.CompletionYear = &n
	}
	if n, err := strconv.Atoi(cell(row, colProjectYear)); err == nil && n > 0 {
		l.ProjectYear = &n
	}
	if n, err := strconv.Atoi(cell(row, colCompletionQuarter)); err == nil && n >= 1 && n <= 4 {
		l.CompletionQuarter = &n
	}

	l.GreenMortgage = flag(cell(row, colGreenMortgage))
	l.Accredited = flag(cell(row, colAccredited))
	l.Renovation = flag(cell(row, colRenovation))
	l.TradeIn = flag(cell(row, colTradeIn))

	return l, true
}

func cell(row []interface{}, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[idx]))
}

func flag(raw string) *bool {
	switch strings.ToLower(raw) {
	case "1", "true", "да", "yes":
		v := true
		return &v
	case "0", "false", "нет", "no":
		v := false
		return &v
	}
	return nil
}
