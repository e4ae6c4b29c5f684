// Package havarot syllabifies fully pointed Hebrew text.
//
// A Text breaks its input into Words, Words into Syllables, Syllables
// into Clusters (one consonant with its marks), and Clusters into
// Chars. Each Syllable exposes its phonological parts and an
// onset/nucleus/coda reading, including furtive patah reversal and
// gemination codas recovered from a following dagesh.
//
// Construction normalizes the input (NFD plus Masoretic mark
// re-sequencing), applies the qamats qatan and holam male correction
// passes, and then builds the graph lazily. The graph is read-mostly:
// nothing mutates after construction except one-time syllable flags
// and the memoized per-syllable parts and structure.
package havarot
