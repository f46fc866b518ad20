package domain

import (
	"regexp"
	"strings"
)

const transactionIDPrefix = "txn_"

// Gateway-issued transaction ids look like txn_<patronId>_<nonce>.
var transactionIDPattern = regexp.MustCompile(`^txn_\d+_\d+$`)

// ValidPatronID reports whether id is exactly 6 ASCII digits.
func ValidPatronID(id string) bool {
	if len(id) != 6 {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

// ValidTransactionID reports whether id matches the full txn_<digits>_<digits>
// shape required to request a refund.
func ValidTransactionID(id string) bool {
	return transactionIDPattern.MatchString(id)
}

// KnownTransactionID is the weaker shape check used by status lookups:
// anything the gateway could have issued carries the txn_ prefix.
func KnownTransactionID(id string) bool {
	return len(id) > len(transactionIDPrefix) && strings.HasPrefix(id, transactionIDPrefix)
}
