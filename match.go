package korobin

// candidates is an ordered set of window indices, oldest slot first.
// Narrowing returns a new set and never modifies the receiver.
type candidates []int

// scan collects every window index holding b, walking from the cursor
// (oldest byte) towards the newest.
func (w *window) scan(b byte) candidates {
	var out candidates
	for n := 0; n < WindowSize; n++ {
		i := w.slot(n)
		if w.buf[i] == b {
			out = append(out, i)
		}
	}

	return out
}

// narrow returns the candidates for which keep reports true, order preserved.
func (c candidates) narrow(keep func(int) bool) candidates {
	var out candidates
	for _, i := range c {
		if keep(i) {
			out = append(out, i)
		}
	}

	return out
}

// lookahead is the window as the decoder sees it while copying a match:
// pending bytes are treated as already written from the cursor onwards.
type lookahead struct {
	w       *window
	pending []byte
}

// read returns the byte at index i with pending bytes overlaid.
func (l lookahead) read(i int) byte {
	if d := l.w.distance(i); d < len(l.pending) {
		return l.pending[d]
	}

	return l.w.read(i)
}

// findMatch searches the window for the longest back-reference to the
// start of src. Candidates are narrowed one byte at a time; each step k
// compares src[k] with the slot k positions after the candidate while
// src[:k] is treated as written. The oldest candidate surviving at the
// final length wins. ok is false when no match reaches MinMatch.
func (w *window) findMatch(src []byte) (t token, ok bool) {
	if len(src) < MinMatch {
		return token{}, false
	}

	set := w.scan(src[0])
	if len(set) == 0 {
		return token{}, false
	}

	limit := min(MaxMatch, len(src))
	length := 1
	for ; length < limit; length++ {
		view := lookahead{w: w, pending: src[:length]}
		want := src[length]
		next := set.narrow(func(i int) bool {
			return view.read(i+length) == want
		})
		if len(next) == 0 {
			break
		}
		set = next
	}

	if length < MinMatch {
		return token{}, false
	}

	return matchToken(set[0], length), true
}
