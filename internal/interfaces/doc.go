// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - UserStore, CategoryStore, WordStore: owner-scoped records (internal/storage/storage.go)
//   - Store: the union of the three, implemented by MemoryStore and database.Database
//   - Maintenance: integrity repairs run by the scheduler (internal/storage/storage.go)
//   - Pinger: health probe (internal/storage/storage.go)
//
// ## Background Work Interfaces
//
//   - TaskQueue: enqueue and poll tasks from HTTP handlers (internal/http/tasks.go)
//   - Enqueuer, UserLister: inputs of the cron scheduler (internal/scheduler/scheduler.go)
//   - DeckExporter: writes a user's deck from a task (internal/tasks/export_deck.go)
//
// # Adding a New Storage Backend
//
//  1. Implement storage.Store and storage.Maintenance.
//
//  2. Run the shared contract suite from its tests:
//
//     func TestContract(t *testing.T) {
//         storagetest.Run(t, func(t *testing.T) storage.Store { return newStore(t) })
//     }
//
//  3. Add a case to entrypoint.OpenBackend and a compile-time check in checks.go.
//
// # Adding a New Background Task
//
//  1. Define the task type with a backlite.QueueConfig in internal/tasks/.
//
//  2. Write a processor and a NewXQueue constructor.
//
//  3. Register the queue in entrypoint.Run and, if periodic, add a job to the scheduler.
//
// # Compile-Time Interface Checks
//
// Implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// Same-package checks sit next to the type. Cross-package ones are in checks.go.
package interfaces
