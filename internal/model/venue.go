package model

// venues lists the 24 boat-racing stadiums, north to south. The backend
// addresses venues by these exact names.
var venues = []string{
	"桐生", "戸田", "江戸川", "平和島", "多摩川", "浜名湖",
	"蒲郡", "常滑", "津", "三国", "びわこ", "住之江",
	"尼崎", "鳴門", "丸亀", "児島", "宮島", "徳山",
	"下関", "若松", "芦屋", "福岡", "唐津", "大村",
}

// Venues returns the venue names in canonical order.
func Venues() []string {
	out := make([]string, len(venues))
	copy(out, venues)
	return out
}

// ValidVenue reports whether name is one of the 24 stadiums.
func ValidVenue(name string) bool {
	for _, v := range venues {
		if v == name {
			return true
		}
	}
	return false
}

// Race numbers run 1R through 12R at every venue.
const (
	MinRaceNumber = 1
	MaxRaceNumber = 12
)

// ValidRaceNumber reports whether n is a real race number.
func ValidRaceNumber(n int) bool {
	return n >= MinRaceNumber && n <= MaxRaceNumber
}
