package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/vermeer/ecs"
)

// EntityInfo is one cached browser row.
type EntityInfo struct {
	Entity         ecs.Entity
	ArchetypeID    uint32
	ComponentTypes []string
	ComponentCount int
}

// EntityBrowserCache holds the flattened entity listing. Rebuilt whenever the
// world's archetype or entity counts change.
type EntityBrowserCache struct {
	entities      []EntityInfo
	lastArchCount int
	lastLiveCount int
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache: &EntityBrowserCache{
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

// Render draws the browser window: search bar, sortable entity table, and
// pagination when the filtered listing exceeds one page.
func (eb *EntityBrowserComponent) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.refreshCache(storage)
	eb.renderToolbar()

	filtered := eb.filteredEntities()
	eb.clampPage(len(filtered))

	eb.renderTable(filtered)
	eb.renderPagination(len(filtered))

	imgui.End()
}

func (eb *EntityBrowserComponent) renderToolbar() {
	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterArchetypeId = nil
	}
}

func (eb *EntityBrowserComponent) renderTable(filtered []EntityInfo) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if !imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}

	imgui.TableSetupColumn("Entity")
	imgui.TableSetupColumn("Archetype ID")
	imgui.TableSetupColumn("Components")
	imgui.TableSetupColumn("Count")
	imgui.TableHeadersRow()

	sortSpecs := imgui.TableGetSortSpecs()
	if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
		spec := sortSpecs.Specs()
		eb.cache.sortColumn = int(spec.ColumnIndex())
		eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
		eb.sortEntities()
		sortSpecs.SetSpecsDirty(false)
	}

	start := eb.currentPage * eb.maxEntitiesPerPage
	end := min(start+eb.maxEntitiesPerPage, len(filtered))

	for _, entity := range filtered[start:end] {
		imgui.TableNextRow()

		imgui.TableNextColumn()
		isSelected := eb.selectedEntity == entity.Entity
		if imgui.SelectableBoolV(formatEntity(entity.Entity), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
			eb.selectedEntity = entity.Entity
		}

		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("0x%X", entity.ArchetypeID))

		imgui.TableNextColumn()
		imgui.Text(strings.Join(entity.ComponentTypes, ", "))

		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", entity.ComponentCount))
	}

	imgui.EndTable()
}

func (eb *EntityBrowserComponent) renderPagination(total int) {
	if total <= eb.maxEntitiesPerPage {
		imgui.Text(fmt.Sprintf("Total: %d entities", total))
		return
	}

	totalPages := (total + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, total))
	imgui.SameLine()
	if imgui.Button("Prev") && eb.currentPage > 0 {
		eb.currentPage--
	}
	imgui.SameLine()
	if imgui.Button("Next") && eb.currentPage < totalPages-1 {
		eb.currentPage++
	}
}

// clampPage pulls the current page back into range after the filter or the
// world shrinks the listing.
func (eb *EntityBrowserComponent) clampPage(total int) {
	maxPage := 0
	if total > 0 {
		maxPage = (total - 1) / eb.maxEntitiesPerPage
	}
	if eb.currentPage > maxPage {
		eb.currentPage = maxPage
	}
}

func formatEntity(e ecs.Entity) string {
	return fmt.Sprintf("%d@%d", e.Index(), e.Generation())
}

func (eb *EntityBrowserComponent) refreshCache(storage *ecs.Storage) {
	archCount := len(storage.GetArchetypes())
	liveCount := storage.Len()
	if eb.cache.entities != nil &&
		eb.cache.lastArchCount == archCount &&
		eb.cache.lastLiveCount == liveCount {
		return
	}

	eb.cache.lastArchCount = archCount
	eb.cache.lastLiveCount = liveCount
	eb.cache.entities = make([]EntityInfo, 0, liveCount)

	for _, archetype := range storage.GetArchetypes() {
		componentTypes := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			componentTypes[i] = t.String()
		}

		for entity := range archetype.Iter() {
			eb.cache.entities = append(eb.cache.entities, EntityInfo{
				Entity:         entity,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: componentTypes,
				ComponentCount: len(componentTypes),
			})
		}
	}

	eb.sortEntities()
}

func (eb *EntityBrowserComponent) sortEntities() {
	sort.Slice(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		var less bool

		switch eb.cache.sortColumn {
		case 1:
			less = a.ArchetypeID < b.ArchetypeID
		case 2:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 3:
			less = a.ComponentCount < b.ComponentCount
		default:
			less = a.Entity < b.Entity
		}

		if !eb.cache.sortAscending {
			return !less
		}
		return less
	})
}

func (eb *EntityBrowserComponent) filteredEntities() []EntityInfo {
	if eb.filterText == "" && eb.filterArchetypeId == nil {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		if eb.filterArchetypeId != nil && entity.ArchetypeID != *eb.filterArchetypeId {
			continue
		}

		if eb.filterText != "" {
			idStr := formatEntity(entity.Entity)
			archStr := fmt.Sprintf("0x%x", entity.ArchetypeID)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(archStr, filterLower) &&
				!strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

// GetSelectedEntity returns the row the user last clicked, or the zero entity.
func (eb *EntityBrowserComponent) GetSelectedEntity() ecs.Entity {
	return eb.selectedEntity
}
