package feedfetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/gocolly/colly/v2"

	"github.com/inbackru/v35-sub000/internal/core/domain"
)

// Формат страницы HTTP-фида.
type feedPage struct {
	Listings   []feedRow `json:"listings"`
	NextCursor string    `json:"next_cursor"`
}

// feedRow – одна строка фида. Числа приходят строками (наследие
// выгрузки из таблиц), поэтому все разбирается терпимо: нечитаемое
// поле остается пустым, строка не отбрасывается.
type feedRow struct {
	ID                string `json:"id"`
	Rooms             string `json:"rooms"`
	Area              string `json:"area"`
	Floor             string `json:"floor"`
	BuildingFloors    string `json:"building_floors"`
	Price             string `json:"price"`
	PricePerM2        string `json:"price_per_m2"`
	Project           string `json:"project"`
	Developer         string `json:"developer"`
	Building          string `json:"building"`
	CompletionYear    string `json:"completion_year"`
	ProjectYear       string `json:"project_year"`
	CompletionQuarter string `json:"completion_quarter"`
	Address           string `json:"address"`
	GreenMortgage     string `json:"green_mortgage"`
	Accredited        string `json:"accredited"`
	Renovation        string `json:"renovation"`
	TradeIn           string `json:"trade_in"`
	ObjectClass       string `json:"object_class"`
}

// FetchListings забирает одну страницу фида и возвращает курсор
// следующей. Пустой курсор – фид кончился.
func (a *FeedFetcherAdapter) FetchListings(ctx context.Context, feed domain.FeedSpec) ([]domain.Listing, string, error) {
	collector := a.collector.Clone()

	var listings []domain.Listing
	var nextCursor string
	var parseErr error

	targetURL, err := buildPageURL(feed)
	if err != nil {
		return nil, "", fmt.Errorf("feed fetcher: failed to build URL for feed '%s': %w", feed.Name, err)
	}

	collector.OnResponse(func(r *colly.Response) {
		var page feedPage
		if jsonErr := json.Unmarshal(r.Body, &page); jsonErr != nil {
			parseErr = fmt.Errorf("failed to parse feed page %s: %w", r.Request.URL.String(), jsonErr)
			return
		}

		for _, row := range page.Listings {
			l, ok := row.toDomain()
			if !ok {
				log.Printf("FeedFetcher: Skipping feed row without usable id (feed '%s')\n", feed.Name)
				continue
			}
			listings = append(listings, l)
		}
		nextCursor = page.NextCursor
	})

	if err := collector.Visit(targetURL); err != nil {
		return nil, "", fmt.Errorf("feed fetcher: failed to visit %s: %w", targetURL, err)
	}
	collector.Wait()

	if parseErr != nil {
		return nil, "", fmt.Errorf("feed fetcher: %w", parseErr)
	}

	log.Printf("FeedFetcher: Fetched %d listings from feed '%s'. Next cursor: '%s'\n", len(listings), feed.Name, nextCursor)
	return listings, nextCursor, nil
}

func buildPageURL(feed domain.FeedSpec) (string, error) {
	u, err := url.Parse(feed.URL)
	if err != nil {
		return "", err
	}
	if feed.Cursor != "" {
		q := u.Query()
		q.Set("cursor", feed.Cursor)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// toDomain переводит строку фида в доменное объявление. Строка без
// числового id непригодна; все остальное опционально.
func (r feedRow) toDomain() (domain.Listing, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.ID), 10, 64)
	if err != nil || id <= 0 {
		return domain.Listing{}, false
	}

	l := domain.Listing{
		ID:             id,
		Project:        strings.TrimSpace(r.Project),
		Developer:      strings.TrimSpace(r.Developer),
		Building:       strings.TrimSpace(r.Building),
		DisplayAddress: strings.TrimSpace(r.Address),
		ObjectClass:    strings.TrimSpace(r.ObjectClass),
	}

	if n, err := strconv.Atoi(strings.TrimSpace(r.Rooms)); err == nil && n >= 0 {
		l.Rooms = n
	}
	if v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(r.Area), ",", "."), 64); err == nil && v > 0 {
		l.Area = &v
	}
	if n, err := strconv.Atoi(strings.TrimSpace(r.Floor)); err == nil && n >= 1 {
		l.Floor = &n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(r.BuildingFloors)); err == nil && n >= 1 {
		l.BuildingFloors = &n
	}
	if v, err := strconv.ParseInt(strings.TrimSpace(r.Price), 10, 64); err == nil && v >= 0 {
		l.Price = v
	}
	if v, err := strconv.ParseInt(strings.TrimSpace(r.PricePerM2), 10, 64); err == nil && v > 0 {
		l.PricePerM2 = &v
	}
	if n, err := strconv.Atoi(strings.TrimSpace(r.CompletionYear)); err == nil && n > 0 {
		l.CompletionYear = &n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(r.ProjectYear)); err == nil && n > 0 {
		l.ProjectYear = &n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(r.CompletionQuarter)); err == nil && n >= 1 && n <= 4 {
		l.CompletionQuarter = &n
	}

	l.GreenMortgage = parseBoolFlag(r.GreenMortgage)
	l.Accredited = parseBoolFlag(r.Accredited)
	l.Renovation = parseBoolFlag(r.Renovation)
	l.TradeIn = parseBoolFlag(r.TradeIn)

	return l, true
}

func parseBoolFlag(raw string) *bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "да", "yes":
		v := true
		return &v
	case "0", "false", "нет", "no":
		v := false
		return &v
	}
	return nil
}
