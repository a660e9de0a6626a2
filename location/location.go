package location

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// Panchayat groups the villages under one local administration.
type Panchayat struct {
	Name     string   `json:"name"`
	Villages []string `json:"villages"`
}

// District is the top level of the reference hierarchy.
type District struct {
	Name       string      `json:"name"`
	Panchayats []Panchayat `json:"panchayats"`
}

// rawDistrict tolerates both "name" and "district" keys in the source file.
type rawDistrict struct {
	Name       string      `json:"name"`
	District   string      `json:"district"`
	Panchayats []Panchayat `json:"panchayats"`
}

// Service loads the static district/panchayat/village dataset once and
// serves lookups from the cached copy for the process lifetime.
type Service struct {
	path      string
	once      sync.Once
	districts []District
	err       error
}

// NewService prepares a service reading from the given JSON file. The file
// is not touched until the first lookup.
func NewService(path string) *Service {
	return &Service{path: path}
}

func (s *Service) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.err = fmt.Errorf("read location data: %w", err)
		return
	}

	var raw []rawDistrict
	if err := json.Unmarshal(data, &raw); err != nil {
		s.err = fmt.Errorf("parse location data: %w", err)
		return
	}

	// Standardize and clean: names in the source carry incidental whitespace.
	districts := make([]District, 0, len(raw))
	for _, rd := range raw {
		name := rd.Name
		if name == "" {
			name = rd.District
		}
		d := District{Name: strings.TrimSpace(name)}
		for _, p := range rd.Panchayats {
			cleaned := Panchayat{Name: strings.TrimSpace(p.Name)}
			for _, v := range p.Villages {
				cleaned.Villages = append(cleaned.Villages, strings.TrimSpace(v))
			}
			d.Panchayats = append(d.Panchayats, cleaned)
		}
		districts = append(districts, d)
	}
	s.districts = districts
}

// Districts returns the full cached dataset.
func (s *Service) Districts() ([]District, error) {
	s.once.Do(s.load)
	return s.districts, s.err
}

// DistrictNames returns all district names, sorted.
func (s *Service) DistrictNames() ([]string, error) {
	districts, err := s.Districts()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(districts))
	for _, d := range districts {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names, nil
}

// District returns the data for one district, or nil if unknown.
func (s *Service) District(name string) (*District, error) {
	districts, err := s.Districts()
	if err != nil {
		return nil, err
	}
	for i := range districts {
		if districts[i].Name == name {
			return &districts[i], nil
		}
	}
	return nil, nil
}

// PanchayatNames returns the panchayats of a district, in file order.
func (s *Service) PanchayatNames(district string) ([]string, error) {
	d, err := s.District(district)
	if err != nil || d == nil {
		return nil, err
	}
	names := make([]string, 0, len(d.Panchayats))
	for _, p := range d.Panchayats {
		names = append(names, p.Name)
	}
	return names, nil
}

// VillageNames returns the villages of a panchayat within a district.
func (s *Service) VillageNames(district, panchayat string) ([]string, error) {
	d, err := s.District(district)
	if err != nil || d == nil {
		return nil, err
	}
	for _, p := range d.Panchayats {
		if p.Name == panchayat {
			return p.Villages, nil
		}
	}
	return nil, nil
}

// VillageToPanchayat builds the village -> parent panchayat lookup used for
// area aggregation on the map.
func (s *Service) VillageToPanchayat() (map[string]string, error) {
	districts, err := s.Districts()
	if err != nil {
		return nil, err
	}
	lookup := make(map[string]string)
	for _, d := range districts {
		for _, p := range d.Panchayats {
			for _, v := range p.Villages {
				lookup[v] = p.Name
			}
		}
	}
	return lookup, nil
}
