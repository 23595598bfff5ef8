/*
Package blockflow steps graphs of blocks in discrete time.

Blocks (see package kblock) are grouped into a Collection. Collections nest,
and a block may appear in several collections; scheduling always works on the
flattened set of leaves, each leaf counted once.

	ids := kblock.NewSequence()
	c := blockflow.NewCollection(ids, blockflow.WithMultithreading(true))
	c.MustAdd(source, filter, probe)

	for i := 0; i < 1000; i++ {
		if err := c.UpdateAndLatchTopologically(); err != nil {
			return err
		}
	}

UpdateAndLatchTopologically derives dependency ranks from the port
connections (see package kdag) and runs each leaf after its producers, so a
value travels through a whole chain within one tick. UpdateAndLatch runs two
phases over the direct members instead: every member reads the values of the
previous tick, which is what a synchronous circuit does.

The ranks are cached. Adding, inserting or removing members, and connecting
or disconnecting ports of contained blocks, invalidates the cache; the next
tick recomputes it. SortCount tells how often that happened.
*/
package blockflow
