package opf

import (
	"encoding/xml"
	"io"
	"path"
	"strings"

	"github.com/tsawler/epubcore/limits"
)

// ParsePackage SAX-parses the OPF document read from r, located at opfPath
// within the archive, into a Package. Manifest hrefs are resolved relative
// to the OPF's directory and normalized; a resolved href that would escape
// the archive root is a parse error.
func ParsePackage(r io.Reader, opfPath string, lim limits.PackageLimits) (*Package, error) {
	dec := xml.NewDecoder(r)

	opfDir := path.Dir(opfPath)
	if opfDir == "." {
		opfDir = ""
	}

	pkg := &Package{Manifest: make(map[string]ManifestItem), OPFDir: opfDir}

	var (
		stack        []string
		textBuf      strings.Builder
		metaCoverID  string
		creatorsSeen []string
		subjects     []string
	)

	inStack := func(name string) bool {
		for _, s := range stack {
			if s == name {
				return true
			}
		}
		return false
	}
	top := func() string {
		if len(stack) == 0 {
			return ""
		}
		return stack[len(stack)-1]
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, limits.ParseAt(opfPath, int(dec.InputOffset()), err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) >= lim.MaxElementStack {
				return nil, limits.Exceeded("opf_element_stack")
			}
			local := t.Name.Local
			stack = append(stack, local)
			textBuf.Reset()

			switch {
			case local == "item" && inStack("manifest"):
				var id, href, mediaType, propsAttr string
				for _, a := range t.Attr {
					switch a.Name.Local {
					case "id":
						id = a.Value
					case "href":
						href = a.Value
					case "media-type":
						mediaType = a.Value
					case "properties":
						propsAttr = a.Value
					}
				}
				if id == "" {
					continue
				}
				if _, exists := pkg.Manifest[id]; exists {
					return nil, limits.ParseAt(opfPath, int(dec.InputOffset()), errDuplicateManifestID(id))
				}
				resolved, ok := resolveWithinRoot(opfDir, href)
				if !ok {
					return nil, limits.ParseAt(opfPath, int(dec.InputOffset()), errUnsafeHref(href))
				}
				pkg.Manifest[id] = ManifestItem{
					ID:         id,
					Href:       resolved,
					MediaType:  mediaType,
					Properties: parseProperties(propsAttr),
				}

			case local == "itemref" && inStack("spine"):
				var idref, linear string
				for _, a := range t.Attr {
					switch a.Name.Local {
					case "idref":
						idref = a.Value
					case "linear":
						linear = a.Value
					}
				}
				if idref == "" {
					continue
				}
				if len(pkg.Spine) >= lim.MaxSpineItems {
					return nil, limits.Exceeded("spine_items")
				}
				pkg.Spine = append(pkg.Spine, SpineItem{
					ItemID: idref,
					Linear: linear != "no",
				})

			case local == "reference" && inStack("guide"):
				var typ, title, href string
				for _, a := range t.Attr {
					switch a.Name.Local {
					case "type":
						typ = a.Value
					case "title":
						title = a.Value
					case "href":
						href = a.Value
					}
				}
				resolved, ok := resolveWithinRoot(opfDir, href)
				if ok {
					pkg.Guide = append(pkg.Guide, GuideRef{Type: typ, Title: title, Href: resolved})
				}

			case local == "meta" && inStack("metadata"):
				var name, content string
				for _, a := range t.Attr {
					switch a.Name.Local {
					case "name":
						name = a.Value
					case "content":
						content = a.Value
					}
				}
				if name == "cover" && content != "" {
					metaCoverID = content
				}
			}

		case xml.EndElement:
			local := t.Name.Local
			text := strings.TrimSpace(textBuf.String())
			textBuf.Reset()

			if len(stack) > 0 && top() == local {
				stack = stack[:len(stack)-1]
			}

			if !inStack("metadata") {
				continue
			}
			switch local {
			case "title":
				if pkg.Metadata.Title == "" {
					pkg.Metadata.Title = text
				}
			case "creator":
				if text != "" {
					creatorsSeen = append(creatorsSeen, text)
				}
			case "language":
				if pkg.Metadata.Language == "" {
					pkg.Metadata.Language = text
				}
			case "identifier":
				if pkg.Metadata.Identifier == "" {
					pkg.Metadata.Identifier = text
				}
			case "date":
				if pkg.Metadata.Date == "" {
					pkg.Metadata.Date = text
				}
			case "publisher":
				if pkg.Metadata.Publisher == "" {
					pkg.Metadata.Publisher = text
				}
			case "rights":
				if pkg.Metadata.Rights == "" {
					pkg.Metadata.Rights = text
				}
			case "description":
				if pkg.Metadata.Description == "" {
					pkg.Metadata.Description = text
				}
			case "subject":
				if text != "" {
					subjects = append(subjects, text)
				}
			}

		case xml.CharData:
			textBuf.Write(t)
		}

		if len(pkg.Manifest) > lim.MaxManifestItems {
			return nil, limits.Exceeded("manifest_items")
		}
	}

	pkg.Metadata.Creators = creatorsSeen
	pkg.Metadata.Subjects = subjects

	if len(pkg.Spine) == 0 {
		return nil, limits.ParseAt(opfPath, 0, errEmptySpine)
	}

	for _, item := range pkg.Spine {
		if _, ok := pkg.Manifest[item.ItemID]; !ok {
			return nil, limits.ParseAt(opfPath, 0, errDanglingSpineRef(item.ItemID))
		}
	}

	pkg.CoverRef = resolveCover(pkg, metaCoverID)

	return pkg, nil
}

// resolveCover returns the manifest item carrying properties="cover-image"
// when there is one, so EPUB 3 wins when both are present and disagree;
// otherwise it falls back to the EPUB 2 <meta name="cover"> id, if that id
// is in the manifest.
func resolveCover(pkg *Package, metaCoverID string) string {
	for id, item := range pkg.Manifest {
		if item.Properties.Has(PropCoverImage) {
			return id
		}
	}
	if metaCoverID != "" {
		if _, ok := pkg.Manifest[metaCoverID]; ok {
			return metaCoverID
		}
	}
	return ""
}

// resolveWithinRoot joins href against dir, normalizes ".." segments, and
// rejects any result that would escape the archive root.
func resolveWithinRoot(dir, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	if idx := strings.IndexByte(href, '#'); idx >= 0 {
		href = href[:idx]
	}
	if strings.HasPrefix(href, "/") {
		return "", false
	}
	joined := href
	if dir != "" {
		joined = path.Join(dir, href)
	}
	cleaned := path.Clean(joined)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") || strings.HasPrefix(cleaned, "/") {
		return "", false
	}
	return cleaned, true
}

type opfErr string

func (e opfErr) Error() string { return string(e) }

var errEmptySpine = opfErr("opf: spine is empty")

func errDuplicateManifestID(id string) error { return opfErr("opf: duplicate manifest id " + id) }
func errUnsafeHref(href string) error        { return opfErr("opf: href escapes archive root: " + href) }
func errDanglingSpineRef(id string) error {
	return opfErr("opf: spine references unknown manifest id " + id)
}
