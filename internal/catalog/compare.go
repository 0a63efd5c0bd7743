package catalog

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"stockroom/internal/models"
)

// Collators are not safe for concurrent use, so comparisons borrow one from
// a pool. The catalog's working language is Traditional Chinese.
var collators = sync.Pool{
	New: func() any {
		return collate.New(language.TraditionalChinese)
	},
}

func collatedCompare(a, b string) int {
	c := collators.Get().(*collate.Collator)
	defer collators.Put(c)
	return c.CompareString(a, b)
}

// Compare is the default total order over catalog records: name, then parsed
// size, then material, then color, with the part number as the final
// tie-break. Text fields use collated comparison; the part number is
// compared by raw code points. Records identical in all five keys compare
// equal and keep their relative order under a stable sort.
func Compare(a, b *models.Record) int {
	if res := collatedCompare(a.Name, b.Name); res != 0 {
		return res
	}

	sizeA, sizeB := ParseSize(a.Size), ParseSize(b.Size)
	if sizeA.Class != sizeB.Class {
		return sizeA.Class - sizeB.Class
	}
	switch sizeA.Class {
	case SizeClassMillimeter, SizeClassNumeric:
		if sizeA.Num < sizeB.Num {
			return -1
		}
		if sizeA.Num > sizeB.Num {
			return 1
		}
	case SizeClassLabel:
		if res := collatedCompare(sizeA.Label, sizeB.Label); res != 0 {
			return res
		}
	}

	if res := collatedCompare(a.Material, b.Material); res != 0 {
		return res
	}
	if res := collatedCompare(a.Color, b.Color); res != 0 {
		return res
	}
	return strings.Compare(a.PartNumber, b.PartNumber)
}

// SortDefault sorts records in place into the default catalog order.
func SortDefault(records []*models.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return Compare(records[i], records[j]) < 0
	})
}
