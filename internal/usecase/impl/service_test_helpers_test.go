package impl

import (
	"io"
	"log/slog"

	"unishare/internal/domain/repository"
	mockRepo "unishare/internal/mocks/repository"

	"github.com/stretchr/testify/mock"
)

// testLogger returns a logger that discards everything.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// runTx wires the transaction manager mock to run the transactional
// callback against the given factory. The callback's error becomes the
// mock's return value, so domain errors surface exactly as they would
// through a real transaction.
func runTx(txManager *mockRepo.MockTransactionManager, factory repository.RepositoryFactory) {
	call := txManager.On("Execute", mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error"))
	call.Run(func(args mock.Arguments) {
		fn := args.Get(1).(func(repository.RepositoryFactory) error)
		call.ReturnArguments = mock.Arguments{fn(factory)}
	})
}
