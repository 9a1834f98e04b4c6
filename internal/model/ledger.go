package model

import "github.com/shopspring/decimal"

// Side is the debit or credit column of a journal line.
type Side string

const (
	Debit  Side = "debit"
	Credit Side = "credit"
)

// Short returns the conventional two-letter column label.
func (s Side) Short() string {
	if s == Debit {
		return "Dr"
	}
	return "Cr"
}

// LineID identifies one gradable cell: an account's debit or credit within a journal entry.
type LineID struct {
	Entry   string
	Account string
	Side    Side
}

// Expected is the correct content of one cell: an amount, or blank when not applicable.
type Expected struct {
	Amount     decimal.Decimal
	Applicable bool
}

// Amount builds an applicable expectation.
func Amount(d decimal.Decimal) Expected {
	return Expected{Amount: d, Applicable: true}
}

// NotApplicable marks a cell that a correct answer leaves blank.
func NotApplicable() Expected {
	return Expected{}
}

// IsZero reports whether a correct answer for this cell holds no value.
func (e Expected) IsZero() bool {
	return !e.Applicable || e.Amount.IsZero()
}

// JournalLine is one account row with both columns.
type JournalLine struct {
	Account string
	Debit   Expected
	Credit  Expected
}

// Cell returns the expectation for the given side.
func (l JournalLine) Cell(side Side) Expected {
	if side == Debit {
		return l.Debit
	}
	return l.Credit
}

// JournalEntry is a titled group of lines, e.g. the year-end accrual.
type JournalEntry struct {
	Key   string
	Title string
	Lines []JournalLine
}

// EntryLayout describes the accounts a problem asks for, independent of amounts.
type EntryLayout struct {
	Key      string
	Title    string
	Accounts []string
}

// AnswerKey is the immutable set of correct journal entries for one problem.
type AnswerKey struct {
	entries []JournalEntry
}

// NewAnswerKey copies entries into a new key.
func NewAnswerKey(entries []JournalEntry) AnswerKey {
	return AnswerKey{entries: copyEntries(entries)}
}

// Entries returns a copy of the journal entries in layout order.
func (k AnswerKey) Entries() []JournalEntry {
	return copyEntries(k.entries)
}

// Lookup returns the expectation for a cell.
func (k AnswerKey) Lookup(id LineID) (Expected, bool) {
	for _, e := range k.entries {
		if e.Key != id.Entry {
			continue
		}
		for _, l := range e.Lines {
			if l.Account == id.Account {
				return l.Cell(id.Side), true
			}
		}
	}
	return Expected{}, false
}

// Cells lists every gradable cell, debit before credit, in layout order.
func (k AnswerKey) Cells() []LineID {
	var ids []LineID
	for _, e := range k.entries {
		for _, l := range e.Lines {
			ids = append(ids,
				LineID{Entry: e.Key, Account: l.Account, Side: Debit},
				LineID{Entry: e.Key, Account: l.Account, Side: Credit},
			)
		}
	}
	return ids
}

// LineAt resolves a 1-based row number across all entries.
func (k AnswerKey) LineAt(n int) (entry string, account string, ok bool) {
	i := 0
	for _, e := range k.entries {
		for _, l := range e.Lines {
			i++
			if i == n {
				return e.Key, l.Account, true
			}
		}
	}
	return "", "", false
}

// Equal reports whether two keys hold identical entries and amounts.
func (k AnswerKey) Equal(other AnswerKey) bool {
	if len(k.entries) != len(other.entries) {
		return false
	}
	for i, e := range k.entries {
		o := other.entries[i]
		if e.Key != o.Key || e.Title != o.Title || len(e.Lines) != len(o.Lines) {
			return false
		}
		for j, l := range e.Lines {
			ol := o.Lines[j]
			if l.Account != ol.Account || !sameExpected(l.Debit, ol.Debit) || !sameExpected(l.Credit, ol.Credit) {
				return false
			}
		}
	}
	return true
}

func sameExpected(a, b Expected) bool {
	return a.Applicable == b.Applicable && a.Amount.Equal(b.Amount)
}

func copyEntries(in []JournalEntry) []JournalEntry {
	out := make([]JournalEntry, len(in))
	for i, e := range in {
		lines := make([]JournalLine, len(e.Lines))
		copy(lines, e.Lines)
		out[i] = JournalEntry{Key: e.Key, Title: e.Title, Lines: lines}
	}
	return out
}
