package opf

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/tsawler/epubcore/limits"
)

const containerPath = "META-INF/container.xml"

// ContainerPathName is the well-known archive path for container.xml, exported
// so callers can look it up in their zip archive before calling
// ParseContainer.
const ContainerPathName = containerPath

// ParseContainer reads container.xml from r and returns the full-path of
// the first <rootfile> whose media-type is the OEBPS package type (falling
// back to the first rootfile with any non-empty full-path).
func ParseContainer(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		inRootfiles    bool
		fallback       string
		chosen         string
		chosenTypeSeen bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", limits.ParseAt(containerPath, int(dec.InputOffset()), err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			local := t.Name.Local
			if local == "rootfiles" {
				inRootfiles = true
				continue
			}
			if local != "rootfile" || !inRootfiles {
				continue
			}
			var fullPath, mediaType string
			for _, a := range t.Attr {
				switch a.Name.Local {
				case "full-path":
					fullPath = strings.TrimSpace(a.Value)
				case "media-type":
					mediaType = strings.TrimSpace(a.Value)
				}
			}
			if fullPath == "" {
				continue
			}
			if fallback == "" {
				fallback = fullPath
			}
			if strings.EqualFold(mediaType, "application/oebps-package+xml") && !chosenTypeSeen {
				chosen = fullPath
				chosenTypeSeen = true
			}
		case xml.EndElement:
			if t.Name.Local == "rootfiles" {
				inRootfiles = false
			}
		}
	}

	if chosenTypeSeen {
		return chosen, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", limits.ParseAt(containerPath, 0, errNoRootfile)
}

var errNoRootfile = xmlErr("container.xml has no usable rootfile entry")

type xmlErrString string

func (e xmlErrString) Error() string { return string(e) }

func xmlErr(msg string) error { return xmlErrString(msg) }
