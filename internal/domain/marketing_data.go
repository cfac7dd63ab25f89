package domain

import (
	"time"
)

// DailyChannelRecord representa uma linha da série temporal diária de um canal.
// Os registros são imutáveis após a ingestão: o core consome a janela como
// verdade absoluta, sem deduplicação ou preenchimento de datas ausentes
// (data ausente significa "sem registro", não "gasto zero").
type DailyChannelRecord struct {
	Date        time.Time `json:"date"`
	Channel     string    `json:"channel"`
	Spend       float64   `json:"spend"`
	Impressions int       `json:"impressions"`
	Clicks      int       `json:"clicks"`
	Conversions int       `json:"conversions"`
	Revenue     float64   `json:"revenue"`
}

// ChannelTotals agrega os totais de um canal dentro de uma janela.
type ChannelTotals struct {
	Spend       float64
	Revenue     float64
	Conversions int
	Clicks      int
	Impressions int
}

// Channels retorna os canais distintos presentes nos registros, em ordem
// de primeira aparição.
func Channels(records []*DailyChannelRecord) []string {
	seen := make(map[string]bool)
	channels := make([]string, 0)

	for _, r := range records {
		if !seen[r.Channel] {
			seen[r.Channel] = true
			channels = append(channels, r.Channel)
		}
	}

	return channels
}

// TotalsByChannel agrega os registros por canal.
func TotalsByChannel(records []*DailyChannelRecord) map[string]*ChannelTotals {
	totals := make(map[string]*ChannelTotals)

	for _, r := range records {
		t, ok := totals[r.Channel]
		if !ok {
			t = &ChannelTotals{}
			totals[r.Channel] = t
		}

		t.Spend += r.Spend
		t.Revenue += r.Revenue
		t.Conversions += r.Conversions
		t.Clicks += r.Clicks
		t.Impressions += r.Impressions
	}

	return totals
}
