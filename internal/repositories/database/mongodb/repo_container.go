package mongodb

import (
	portsrepo "github.com/nepalfund/nepalfund_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:     newMongoUserRepository(s),
		CampaignRepo: newMongoCampaignRepository(s),
		Health:       s,
	}
}
