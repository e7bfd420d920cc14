package model

import "encoding/json"

// Dataset represents one catalog package: descriptive metadata plus the
// ordered list of its downloadable resources. Datasets are reconstructed
// from the remote catalog on every query and never persisted locally.
// Catalog keys without a dedicated field land in Extras, so no portal
// metadata is lost between decode and re-encode.
type Dataset struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Title     string         `json:"title"`
	Notes     string         `json:"notes"`
	Author    string         `json:"author,omitempty"`
	License   string         `json:"license_title,omitempty"`
	Resources []Resource     `json:"resources"`
	Extras    map[string]any `json:"-"`
}

// Resource is one downloadable file entry within a dataset. URL may be
// empty: such a resource exists in metadata but can never be downloaded.
type Resource struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Format       string         `json:"format"`
	URL          string         `json:"url"`
	Description  string         `json:"description,omitempty"`
	MimeType     string         `json:"mimetype,omitempty"`
	Size         int64          `json:"size,omitempty"`
	LastModified string         `json:"last_modified,omitempty"`
	Extras       map[string]any `json:"-"`
}

// DatasetSummary is one package_search hit.
type DatasetSummary struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Notes string `json:"notes"`
}

// Aliases break the UnmarshalJSON/MarshalJSON recursion.
type datasetAlias Dataset
type resourceAlias Resource

var datasetKeys = []string{"id", "name", "title", "notes", "author", "license_title", "resources"}
var resourceKeys = []string{"id", "name", "format", "url", "description", "mimetype", "size", "last_modified"}

func splitExtras(data []byte, known []string) (map[string]any, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(raw, k)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	extras := make(map[string]any, len(raw))
	for k, v := range raw {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return nil, err
		}
		extras[k] = val
	}
	return extras, nil
}

func mergeExtras(base []byte, extras map[string]any) ([]byte, error) {
	if len(extras) == 0 {
		return base, nil
	}

	var merged map[string]any
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range extras {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// UnmarshalJSON decodes the dedicated fields and keeps every other
// catalog key as-is in Extras.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	var alias datasetAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	extras, err := splitExtras(data, datasetKeys)
	if err != nil {
		return err
	}
	alias.Extras = extras

	*d = Dataset(alias)
	return nil
}

// MarshalJSON re-emits the dedicated fields together with Extras, so a
// round trip preserves the full catalog document.
func (d Dataset) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(datasetAlias(d))
	if err != nil {
		return nil, err
	}
	return mergeExtras(base, d.Extras)
}

func (r *Resource) UnmarshalJSON(data []byte) error {
	var alias resourceAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	extras, err := splitExtras(data, resourceKeys)
	if err != nil {
		return err
	}
	alias.Extras = extras

	*r = Resource(alias)
	return nil
}

func (r Resource) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(resourceAlias(r))
	if err != nil {
		return nil, err
	}
	return mergeExtras(base, r.Extras)
}

// ResourceNames returns the resource names in catalog order.
func (d *Dataset) ResourceNames() []string {
	names := make([]string, 0, len(d.Resources))
	for _, r := range d.Resources {
		names = append(names, r.Name)
	}
	return names
}

// FindResource returns the first resource with the given name. Resource
// names are assumed unique within a dataset; duplicates are not detected.
func (d *Dataset) FindResource(name string) (*Resource, bool) {
	for i := range d.Resources {
		if d.Resources[i].Name == name {
			return &d.Resources[i], true
		}
	}
	return nil, false
}

// HasURL reports whether the resource can be downloaded at all.
func (r *Resource) HasURL() bool {
	return r.URL != ""
}
