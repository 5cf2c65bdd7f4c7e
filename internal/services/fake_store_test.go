package services_test

import "internship-portal-backend/internal/services/servicestest"

type (
	memStore = servicestest.MemStore
	memBlobs = servicestest.MemBlobs
)

func newMemStore() *memStore { return servicestest.NewMemStore() }

func newMemBlobs() *memBlobs { return servicestest.NewMemBlobs() }
