// Package notebox is the Composition Root for the notebox application.
//
// It connects the core business logic (Domain Layer) with the storage adapter
// using the Hexagonal Architecture pattern.
//
// notebox keeps a private, insertion-ordered list of notes for every
// authenticated caller (Principal). Five operations are supported: add, list,
// get by index, edit in place and delete by index. Negative outcomes (no such
// index) are ordinary results, reported as false or a missing note, never as
// errors.
//
// Usage:
//
//	svc := notebox.New(notebox.WithLogger(logger))
//
//	svc.AddNote(ctx, "alice", "groceries", "milk, eggs")
//	note, ok := svc.GetNote(ctx, "alice", 0)
package notebox
