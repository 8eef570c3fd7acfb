package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintStatistics(t *testing.T) {
	var out strings.Builder
	stats := sampleStatistics()
	stats.AverageGas = 31500.456

	printStatistics(&out, stats)

	want := "Wallet address: " + testAddress + "\n" +
		"Total number of transactions: 3\n" +
		"Average gas per transaction: 31500.46\n" +
		"Average ETH per transaction: 2\n" +
		"Date of first transaction: 2021-01-01\n"
	assert.Equal(t, want, out.String())
}

func TestPrintTransaction(t *testing.T) {
	var out strings.Builder

	printTransaction(&out, sampleTransaction())

	want := "Transaction on 2021-01-01 00:00:00\n" +
		"From: " + testAddress + "\n" +
		"To: 0x0000000000000000000000000000000000000001\n" +
		"Value: 1.5 ETH\n" +
		"Gas: 21000 wei\n\n"
	assert.Equal(t, want, out.String())
}

func TestPrintBalance_TinyAmounts(t *testing.T) {
	var out strings.Builder

	printBalance(&out, 1e-18)

	assert.Equal(t, "The balance of the wallet in ether is: 0.000000000000000001\n", out.String())
}
