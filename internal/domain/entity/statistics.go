package entity

// Statistics is an aggregate snapshot of a wallet.
type Statistics struct {
	Address              string  `json:"address"`
	TotalTransactions    int64   `json:"totalTransactions"`
	AverageGas           float64 `json:"averageGas"`
	AverageEther         float64 `json:"averageEther"`
	FirstTransactionDate string  `json:"firstTransactionDate"`
	// SampledTransactions is the size of the list the averages were computed over.
	SampledTransactions int `json:"sampledTransactions"`
}
