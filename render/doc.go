// Package render produces the HTML fragments the search UI displays:
// result cards with highlighted matching utterances, the full-transcript
// modal body, and the empty and no-match states. Utterance text is
// HTML-escaped before highlight markers are inserted, so transcript
// content can never inject markup while the markers survive.
package render
