// Package paginator slices ordered result sets into fixed-size pages.
package paginator

import "strconv"

// PerPage is the number of items on every page.
const PerPage = 10

type Page[T any] struct {
	Items    []T
	Number   int
	NumPages int
	Count    int
}

func (p Page[T]) HasPrevious() bool { return p.Number > 1 }

func (p Page[T]) HasNext() bool { return p.Number < p.NumPages }

func (p Page[T]) PreviousNumber() int { return p.Number - 1 }

func (p Page[T]) NextNumber() int { return p.Number + 1 }

// Paginate returns the requested page of items. A missing, non-numeric or
// non-positive number selects page 1; a number past the end selects the last
// page. An empty list still has one (empty) page.
func Paginate[T any](items []T, number string) Page[T] {
	count := len(items)
	numPages := (count + PerPage - 1) / PerPage
	if numPages == 0 {
		numPages = 1
	}

	n, err := strconv.Atoi(number)
	switch {
	case err != nil || n < 1:
		n = 1
	case n > numPages:
		n = numPages
	}

	lo := (n - 1) * PerPage
	hi := min(lo+PerPage, count)

	return Page[T]{
		Items:    items[lo:hi],
		Number:   n,
		NumPages: numPages,
		Count:    count,
	}
}
