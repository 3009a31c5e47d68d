package state

import "github.com/kavaroom/tillbook/internal/domain"

// AppendRecord adds a finalized sale to the end of the record set.
func (s *Store) AppendRecord(r domain.SaleRecord) {
	next := make([]domain.SaleRecord, 0, len(s.records)+1)
	next = append(next, s.records...)
	next = append(next, r)
	s.records = next
	s.persist(KeyRecords, s.records)
}

// ReplaceRecord swaps the record with the same entry id, keeping position.
func (s *Store) ReplaceRecord(r domain.SaleRecord) error {
	idx := -1
	for i := range s.records {
		if s.records[i].EntryID == r.EntryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	next := make([]domain.SaleRecord, len(s.records))
	copy(next, s.records)
	next[idx] = r
	s.records = next
	s.persist(KeyRecords, s.records)
	return nil
}

// Record looks a record up by entry id.
func (s *Store) Record(entryID string) (domain.SaleRecord, bool) {
	for _, r := range s.records {
		if r.EntryID == entryID {
			return r, true
		}
	}
	return domain.SaleRecord{}, false
}

// DeleteRecord hard-removes a record. Distinct from voiding, which keeps
// the record for audit.
func (s *Store) DeleteRecord(entryID string) error {
	next := make([]domain.SaleRecord, 0, len(s.records))
	found := false
	for _, r := range s.records {
		if r.EntryID == entryID {
			found = true
			continue
		}
		next = append(next, r)
	}
	if !found {
		return domain.ErrNotFound
	}
	s.records = next
	s.persist(KeyRecords, s.records)
	return nil
}

// ClearRecords wipes every sale record. The catalog and settings stay.
func (s *Store) ClearRecords() {
	s.records = nil
	s.persist(KeyRecords, s.records)
}
