package store

import (
	"github.com/google/uuid"

	"spica/internal/domain"
)

// CreateCharacter adds a character and returns its id. Field insertion
// order follows the order of the fields slice.
func (s *Store) CreateCharacter(name string, fields [][2]string) string {
	c := &domain.Character{
		ID:   uuid.New().String(),
		Name: name,
	}
	for _, f := range fields {
		c.SetField(f[0], f[1])
	}
	s.chars[c.ID] = c
	s.charOrder = append(s.charOrder, c.ID)
	return c.ID
}

// Character returns the character with the given id.
func (s *Store) Character(id string) (*domain.Character, error) {
	c, ok := s.chars[id]
	if !ok {
		return nil, notFound("character", id)
	}
	return c, nil
}

// Characters returns all characters in insertion order.
func (s *Store) Characters() []*domain.Character {
	out := make([]*domain.Character, 0, len(s.charOrder))
	for _, id := range s.charOrder {
		out = append(out, s.chars[id])
	}
	return out
}

// SetCharacterName renames a character.
func (s *Store) SetCharacterName(id, name string) error {
	c, ok := s.chars[id]
	if !ok {
		return notFound("character", id)
	}
	c.Name = name
	return nil
}

// SetCharacterField adds or updates one of a character's freeform fields.
func (s *Store) SetCharacterField(id, key, value string) error {
	c, ok := s.chars[id]
	if !ok {
		return notFound("character", id)
	}
	c.SetField(key, value)
	return nil
}

// SetCharacterChecked marks a character for inclusion in the next LLM context.
func (s *Store) SetCharacterChecked(id string, checked bool) error {
	c, ok := s.chars[id]
	if !ok {
		return notFound("character", id)
	}
	c.IsChecked = checked
	return nil
}

// DeleteCharacter removes a character and prunes its id from every star's
// character tags. Stars referencing the character are kept; a constraint
// whose subject no longer resolves renders under the unknown-character
// fallback rather than being destroyed.
func (s *Store) DeleteCharacter(id string) error {
	if _, ok := s.chars[id]; !ok {
		return notFound("character", id)
	}
	for _, st := range s.stars {
		st.Tags.Characters = removeID(st.Tags.Characters, id)
	}
	delete(s.chars, id)
	s.charOrder = removeID(s.charOrder, id)
	return nil
}
