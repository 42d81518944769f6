package usecase

import (
	"github.com/forest33/shark/business/entity"
)

type configHandler interface {
	Save() error
	Update(data interface{})
	GetPath() string
	AddObserver(func(interface{})) error
}

type dissectorRegistry interface {
	entity.DissectorResolver
	IDs() []string
}
