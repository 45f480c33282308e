package imf

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/sandflow/ffmpeg-imf/internal/xmlhelp"
)

// AssetLocator binds an asset's UUID to the absolute URI its Asset
// Map entry resolved to. One is produced per Asset element in every
// parsed Asset Map.
type AssetLocator struct {
	UUID UUID
	URI  string
}

var dosAbsolutePath = regexp.MustCompile(`^[A-Za-z]:[\\/]`)

// isAbsoluteAssetPath implements the §4.D absoluteness test: a URL
// scheme, a POSIX-absolute path, a DOS drive path, or a UNC path.
func isAbsoluteAssetPath(p string) bool {
	return strings.Contains(p, "://") ||
		strings.HasPrefix(p, "/") ||
		strings.HasPrefix(p, `\\`) ||
		dosAbsolutePath.MatchString(p)
}

// resolveAssetPath joins a Chunk's Path to the Asset Map's own
// directory URI, unless the Path is already absolute, in which case
// it is used verbatim.
func resolveAssetPath(assetMapURI, p string) (string, error) {
	if isAbsoluteAssetPath(p) {
		return p, nil
	}
	base, err := url.Parse(assetMapURI)
	if err != nil {
		return "", fmt.Errorf("imf: asset map URI %q: %w: %v", assetMapURI, ErrInvalidData, err)
	}
	rel, err := url.Parse(p)
	if err != nil {
		return "", fmt.Errorf("imf: asset Path %q: %w: %v", p, ErrInvalidData, err)
	}
	return base.ResolveReference(rel).String(), nil
}

// ParseAssetMap reads an Asset Map document rooted at assetMapURI (used
// to resolve relative Chunk paths) and returns one AssetLocator per
// Asset element, in document order.
func ParseAssetMap(r io.Reader, assetMapURI string) ([]AssetLocator, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("imf: reading Asset Map document: %w", ErrInvalidData)
	}

	root := doc.Root()
	if root == nil || xmlhelp.LocalName(root) != "AssetMap" {
		return nil, fmt.Errorf("imf: root element is not AssetMap: %w", ErrInvalidData)
	}

	assetList := xmlhelp.ChildByName(root, "AssetList")
	var locators []AssetLocator
	for _, asset := range xmlhelp.ChildrenByName(assetList, "Asset") {
		idEl := xmlhelp.ChildByName(asset, "Id")
		if idEl == nil {
			return nil, fmt.Errorf("imf: Asset missing Id: %w", ErrInvalidData)
		}
		id, err := xmlhelp.ReadUUID(idEl)
		if err != nil {
			return nil, fmt.Errorf("imf: Asset Id: %w: %v", ErrInvalidData, err)
		}

		chunkList := xmlhelp.ChildByName(asset, "ChunkList")
		chunks := xmlhelp.ChildrenByName(chunkList, "Chunk")
		if len(chunks) == 0 {
			return nil, fmt.Errorf("imf: Asset %s has no Chunk: %w", id, ErrInvalidData)
		}
		if len(chunks) > 1 {
			log.Info().Str("asset", id.String()).Msg("imf: multiple Chunks on one Asset, only the first is honored")
		}

		pathEl := xmlhelp.ChildByName(chunks[0], "Path")
		if pathEl == nil {
			return nil, fmt.Errorf("imf: Chunk missing Path: %w", ErrInvalidData)
		}

		uri, err := resolveAssetPath(assetMapURI, xmlhelp.Text(pathEl))
		if err != nil {
			return nil, err
		}

		locators = append(locators, AssetLocator{UUID: id, URI: uri})
	}

	return locators, nil
}
