package imf

import "fmt"

// Demux is a fully opened IMF package: its parsed Composition, the
// resolver backing its track files, and a Scheduler ready to pull
// interleaved packets from. Close releases every open essence
// context.
type Demux struct {
	Composition *Composition
	Resolver    *Resolver
	Scheduler   *Scheduler

	opener *Opener
}

// Open parses the CPL at cplURI, resolves its asset references
// through the Asset Map(s) named by opts (or the CPL's sibling
// ASSETMAP.xml when opts is the zero value), builds every virtual
// track, and returns a Demux ready for NextPacket calls.
//
// On any error the partially-built Composition and Resolver are
// discarded; no state is left open.
func Open(cplURI string, opts Options, interrupt func() bool) (*Demux, error) {
	cplFile, err := openURL(cplURI)
	if err != nil {
		return nil, err
	}
	defer cplFile.Close()

	comp, err := ParseCPL(cplFile)
	if err != nil {
		return nil, err
	}

	var locatorSets [][]AssetLocator
	for _, assetMapURI := range opts.assetMapURIs(cplURI) {
		locators, err := loadAssetMap(assetMapURI)
		if err != nil {
			return nil, err
		}
		locatorSets = append(locatorSets, locators)
	}

	resolver := NewResolver(locatorSets...)
	opener := NewOpener(resolver)

	if err := BuildVirtualTracks(comp, opener); err != nil {
		closeAllResources(comp, opener)
		return nil, err
	}

	return &Demux{
		Composition: comp,
		Resolver:    resolver,
		Scheduler:   NewScheduler(comp, opener, interrupt),
		opener:      opener,
	}, nil
}

func loadAssetMap(assetMapURI string) ([]AssetLocator, error) {
	f, err := openURL(assetMapURI)
	if err != nil {
		return nil, fmt.Errorf("imf: loading asset map %q: %w", assetMapURI, err)
	}
	defer f.Close()
	return ParseAssetMap(f, assetMapURI)
}

func closeAllResources(c *Composition, opener *Opener) {
	if c.MainImage2DTrack != nil {
		for _, r := range c.MainImage2DTrack.Expanded {
			opener.Close(r)
		}
	}
	for _, a := range c.MainAudioTracks {
		for _, r := range a.Expanded {
			opener.Close(r)
		}
	}
}

// NextPacket returns the next interleaved packet, or ErrEndOfStream
// once every track is exhausted.
func (d *Demux) NextPacket() (*Packet, error) {
	return d.Scheduler.NextPacket()
}

// Close releases every essence context the Demux has opened.
func (d *Demux) Close() error {
	closeAllResources(d.Composition, d.opener)
	return nil
}
