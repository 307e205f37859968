package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Presets — кнопки быстрых объёмов и список советов дня.
type Presets struct {
	Amounts []int    `yaml:"amounts" json:"amounts"`
	Tips    []string `yaml:"tips" json:"tips"`
}

func DefaultPresets() Presets {
	return Presets{Amounts: []int{100, 200, 300, 500}}
}

func LoadPresets(path string) (*Presets, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Presets
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	p.ApplyDefaults()
	return &p, nil
}

// ApplyDefaults отбрасывает неположительные объёмы; пустой список заменяется стандартным.
// Пустые советы означают встроенный список.
func (p *Presets) ApplyDefaults() {
	kept := p.Amounts[:0]
	for _, a := range p.Amounts {
		if a > 0 {
			kept = append(kept, a)
		}
	}
	p.Amounts = kept
	if len(p.Amounts) == 0 {
		p.Amounts = DefaultPresets().Amounts
	}
}
