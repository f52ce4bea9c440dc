package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"tablesink/internal/dataset"
)

var seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))

var sectors = []string{
	"Technology", "Financials", "Energy", "Health Care",
	"Industrials", "Consumer Staples", "Utilities", "Materials",
}

// DemoDataset builds a listings-style dataset of the given size. Every
// column arrives as raw text in the mixed formats real exports produce
// (currency symbols, locale separators, percent suffixes, yes/no flags),
// so a full save run exercises the whole coercion path.
func DemoDataset(rows int) *dataset.Dataset {
	ids := make([]any, rows)
	tickers := make([]any, rows)
	companies := make([]any, rows)
	sectorCol := make([]any, rows)
	prices := make([]any, rows)
	changes := make([]any, rows)
	volumes := make([]any, rows)
	active := make([]any, rows)
	listed := make([]any, rows)

	for i := 0; i < rows; i++ {
		ids[i] = fmt.Sprintf("%d", i+1)
		tickers[i] = gofakeit.LetterN(4)
		companies[i] = gofakeit.Company()
		sectorCol[i] = sectors[seededRand.Intn(len(sectors))]
		prices[i] = messyPrice(gofakeit.Price(1, 5000))
		changes[i] = fmt.Sprintf("%.2f%%", gofakeit.Float64Range(-15, 15))
		volumes[i] = groupThousands(gofakeit.Number(1_000, 90_000_000))
		active[i] = pick("yes", "no")
		listed[i] = gofakeit.DateRange(
			time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Now().UTC(),
		).Format("2006-01-02")

		// Sprinkle in the blanks and junk a hand-maintained sheet has.
		if seededRand.Intn(20) == 0 {
			prices[i] = "-"
		}
		if seededRand.Intn(25) == 0 {
			volumes[i] = nil
		}
	}

	ds := dataset.New()
	ds.AddColumn("id", ids)
	ds.AddColumn("ticker", tickers)
	ds.AddColumn("company", companies)
	ds.AddColumn("sector", sectorCol)
	ds.AddColumn("price", prices)
	ds.AddColumn("change_pct", changes)
	ds.AddColumn("volume", volumes)
	ds.AddColumn("active", active)
	ds.AddColumn("listed_at", listed)
	return ds
}

// messyPrice renders a price the way regional exports do: sometimes with a
// currency prefix, sometimes with European separators.
func messyPrice(p float64) string {
	switch seededRand.Intn(3) {
	case 0:
		return fmt.Sprintf("$%.2f", p)
	case 1:
		whole := int(p)
		cents := int((p - float64(whole)) * 100)
		return fmt.Sprintf("%s,%02d", groupDots(whole), cents)
	default:
		return fmt.Sprintf("%.2f", p)
	}
}

func pick(options ...string) string {
	return options[seededRand.Intn(len(options))]
}

func groupThousands(n int) string {
	return groupDigits(n, ",")
}

func groupDots(n int) string {
	return groupDigits(n, ".")
}

func groupDigits(n int, sep string) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	out := ""
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out += sep
		}
		out += string(r)
	}
	if neg {
		return "-" + out
	}
	return out
}
