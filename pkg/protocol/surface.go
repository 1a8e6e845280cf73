package protocol

// Surface describes which commands a UI surface may issue. It is checked
// once per command before dispatch.
type Surface struct {
	Name     string
	commands map[Kind]bool
}

func newSurface(name string, kinds ...Kind) Surface {
	s := Surface{Name: name, commands: make(map[Kind]bool, len(kinds))}
	for _, k := range kinds {
		s.commands[k] = true
	}
	return s
}

// Allows reports whether the surface may issue kind.
func (s Surface) Allows(kind Kind) bool {
	return s.commands[kind]
}

// Commands returns the permitted kinds in dispatcher order.
func (s Surface) Commands() []Kind {
	var out []Kind
	for _, k := range Kinds() {
		if s.commands[k] {
			out = append(out, k)
		}
	}
	return out
}

// Surface names.
const (
	SurfacePopup   = "popup"
	SurfaceOptions = "options"
	SurfaceContent = "content"
	SurfaceCLI     = "cli"
)

var surfaces = map[string]Surface{
	SurfacePopup: newSurface(SurfacePopup,
		KindSummarize, KindGetSettings, KindGetPageContent, KindGetLastSummary,
		KindSaveSummary, KindListSummaries),
	SurfaceOptions: newSurface(SurfaceOptions,
		KindGetSettings, KindUpdateSettings, KindResetSettings,
		KindListSummaries, KindGetSummary, KindDeleteSummary, KindClearSummaries, KindExportSummaries),
	SurfaceContent: newSurface(SurfaceContent,
		KindSummarize, KindGetSettings, KindGetPageContent, KindObserveRequest),
	SurfaceCLI: newSurface(SurfaceCLI, Kinds()...),
}

// LookupSurface returns the descriptor for name. An empty name is the CLI.
func LookupSurface(name string) (Surface, bool) {
	if name == "" {
		name = SurfaceCLI
	}
	s, ok := surfaces[name]
	return s, ok
}
