// Package scale builds equal-temperament frequency tables for musical scales
// and snaps arbitrary frequencies onto them.
//
// Tables are derived from the 12-tone equal temperament ladder anchored at
// C4 = 261.63 Hz and span octaves 2 through 7, which covers the practical
// range of monophonic vocal and instrumental material. A process-wide cache
// shares tables across concurrent callers, keyed by scale kind and root.
package scale
