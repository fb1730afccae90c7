package adocbib

import (
	"strconv"
)

// minRange is the shortest run of consecutive numbers written as a range.
const minRange = 3

// combineConsecutive collapses runs of at least minRange strictly
// consecutive integers into "first-last". Tokens that are not plain
// integers, such as numbers with a locator, break runs and pass through.
func combineConsecutive(tokens []string) []string {
	out := make([]string, 0, len(tokens))

	flush := func(run []string) {
		if len(run) >= minRange {
			out = append(out, run[0]+"-"+run[len(run)-1])
			return
		}
		out = append(out, run...)
	}

	var (
		run  []string
		prev int
	)
	for _, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 || strconv.Itoa(n) != tok {
			flush(run)
			run = nil
			out = append(out, tok)
			continue
		}
		if len(run) > 0 && n != prev+1 {
			flush(run)
			run = nil
		}
		run = append(run, tok)
		prev = n
	}
	flush(run)
	return out
}
