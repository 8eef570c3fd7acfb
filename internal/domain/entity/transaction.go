package entity

// Transaction is one on-chain transfer as returned by the explorer, converted to display units.
type Transaction struct {
	Hash        string  `json:"hash,omitempty"`
	BlockNumber string  `json:"blockNumber,omitempty"`
	From        string  `json:"from"`
	To          string  `json:"to"`
	ValueEther  float64 `json:"valueEther"`
	GasUsed     string  `json:"gasUsed"`   // integer string as returned by the explorer
	Timestamp   string  `json:"timestamp"` // UTC, "2006-01-02 15:04:05"
}

// RawTransaction is an explorer list element before unit conversion.
// Every field is the string the explorer returned.
type RawTransaction struct {
	Hash        string
	BlockNumber string
	From        string
	To          string
	GasUsed     string
	Value       string // wei, decimal
	TimeStamp   string // epoch seconds
}
