// Package mocks provides mock implementations for testing the prverify job system.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the port interfaces in internal/core. Regenerate after interface changes:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	store := mocks.NewMockJobStore(ctrl)
//	store.EXPECT().Get(gomock.Any(), "job-1").Return(job, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=job_store_mock.go github.com/myfav-coworker/prverify/internal/core JobStore

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=message_queue_mock.go github.com/myfav-coworker/prverify/internal/core MessageQueue

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=source_control_mock.go github.com/myfav-coworker/prverify/internal/core SourceControlRemote

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=reasoning_mock.go github.com/myfav-coworker/prverify/internal/core ReasoningService,PlanGenerator

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=browser_mock.go github.com/myfav-coworker/prverify/internal/core BrowserSession,BrowserSessionFactory

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=credential_mock.go github.com/myfav-coworker/prverify/internal/core CredentialProvider
