/*
Package arena provides a slot arena for tree nodes.

Values are addressed by integer handles instead of pointers. A slot which has
been freed is tombstoned and its handle goes onto a free-list, to be handed out
again by the next allocation. The arena is the single owner of every value it
stores; handles held elsewhere (parent links, sibling links) carry no
ownership and never keep a value alive on their own.

The zero handle never addresses a live slot and may be used as a "none" marker.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package arena

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
