// Package scan implements the `skim` command's traversal engine: a lazy,
// single-level directory scan whose progress is driven entirely by the
// consumer and whose behavior can be intercepted through hooks.
//
// Basic usage:
//
//	s, err := scan.New("/path/to/dir")
//	if err != nil {
//		log.Fatal(err)
//	}
//	c := s.Search()
//	for c.Next() {
//		fmt.Println(c.Path())
//	}
//	if err := c.Err(); err != nil {
//		log.Fatal(err)
//	}
//
// With a composed filter (all predicates must accept):
//
//	s, err := scan.NewFiltered("/path/to/dir", []scan.PathPredicate{
//		scan.MatchGlob("*.go"),
//		scan.ExcludeHidden(),
//	})
//
// With hooks controlling the traversal:
//
//	s.OnFileFound(func(ev *scan.EntryEvent) {
//		if tooBig(ev.Path()) {
//			ev.Skip() // drop this entry, keep going
//		}
//	})
//	s.OnDirFound(func(ev *scan.EntryEvent) {
//		if ev.Path() == sentinel {
//			ev.Abort() // stop the whole traversal
//		}
//	})
//
// Directories are always yielded before files. The start callbacks fire on
// the first pull, and the finish callbacks fire when the traversal ends by
// exhaustion or abort; a consumer that stops pulling early fires neither.
package scan
