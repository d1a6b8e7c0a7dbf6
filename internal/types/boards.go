package types

// BoardConfig is one row of the board registry.
type BoardConfig struct {
	BoardID      string
	Year         string
	Title        string
	Uuid         string
	ExcludedDays []int // days that count for stats but award no points
}

func (b *BoardConfig) Key() BoardKey {
	return BoardKey{BoardID: b.BoardID, Year: b.Year}
}
