package ledger

// SplitEqually divides amount into n integer shares. When the division is
// inexact the remainder is handed out one smallest unit at a time starting
// from the first share, so the shares always sum to exactly amount. The
// result is never rounded: splitting 101 two ways yields 51 and 50.
//
// amount must be positive and n at least 1; callers validate first.
func SplitEqually(amount int64, n int) []int64 {
	shares := make([]int64, n)
	base := amount / int64(n)
	rem := amount % int64(n)
	for i := range shares {
		shares[i] = base
		if int64(i) < rem {
			shares[i]++
		}
	}
	return shares
}
