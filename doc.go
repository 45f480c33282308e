// Package imf demultiplexes SMPTE Interoperable Master Format (IMF)
// packages: it parses a Composition Playlist (CPL), resolves its asset
// references through one or more Asset Maps, opens the backing essence
// files and interleaves packets across the composition's virtual
// tracks so a caller sees one coherent, monotonically-advancing
// multi-stream source.
//
// The package does not decode, transcode, seek backwards, or rewrite
// CPLs; see Open and (*Demux).NextPacket for the entry points.
package imf
