package store

import "sync"

// CampaignStore caches the campaigns visible to the client. Campaign sync is
// a straight replace-by-id; there is no selection to maintain.
type CampaignStore struct {
	mu        sync.Mutex
	campaigns []Campaign
}

// NewCampaignStore creates an empty campaign cache.
func NewCampaignStore() *CampaignStore {
	return &CampaignStore{}
}

// List returns a copy of every cached campaign in insertion order.
func (s *CampaignStore) List() []Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Campaign, len(s.campaigns))
	copy(out, s.campaigns)
	return out
}

// ReplaceList swaps the entire cached list.
func (s *CampaignStore) ReplaceList(campaigns []Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns = make([]Campaign, len(campaigns))
	copy(s.campaigns, campaigns)
}

// Upsert replaces the cached campaign with the same id, or appends it.
func (s *CampaignStore) Upsert(c Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.campaigns {
		if s.campaigns[i].ID == c.ID {
			s.campaigns[i] = c
			return
		}
	}
	s.campaigns = append(s.campaigns, c)
}

// Remove deletes the campaign with the given id and reports whether a cached
// copy existed.
func (s *CampaignStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.campaigns {
		if s.campaigns[i].ID == id {
			s.campaigns = append(s.campaigns[:i], s.campaigns[i+1:]...)
			return true
		}
	}
	return false
}
