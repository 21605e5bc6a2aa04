// Package library содержит статический каталог образцов.
package library

import (
	"brandcam-bot/internal/domain/entity"
	"brandcam-bot/internal/domain/port"
)

const unsplash = "https://images.unsplash.com/"

func sample(id string) entity.ImageRef {
	return entity.ImageRef(unsplash + id + "?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&q=80&w=400")
}

var defaultPools = map[entity.ProductCategory][]entity.ImageRef{
	entity.CategoryHat: {
		sample("photo-1521369909029-2afed882baee"),
		sample("photo-1534215754734-18e55d13e346"),
		sample("photo-1576871337622-98d48d1cf531"),
	},
	entity.CategoryOuter: {
		sample("photo-1551028719-00167b16eac5"),
		sample("photo-1591047139829-d91aecb6caea"),
		sample("photo-1544022613-e87ca75a784a"),
	},
	entity.CategoryInner: {
		sample("photo-1521572163474-6864f9cf17ab"),
		sample("photo-1583743814966-8936f5b7be1a"),
		sample("photo-1618354691373-d851c5c3a990"),
	},
	entity.CategoryPants: {
		sample("photo-1542272604-787c3835535d"),
		sample("photo-1473966968600-fa801b869a1a"),
		sample("photo-1624378439575-d8705ad7ae80"),
	},
	entity.CategoryShoes: {
		sample("photo-1542291026-7eec264c27ff"),
		sample("photo-1460353581641-37baddab0fa2"),
		sample("photo-1549298916-b41d501d3772"),
	},
}

var defaultGroupSample = sample("photo-1529139574466-a3005c40717f")

// StaticLibrary каталог из фиксированной таблицы
type StaticLibrary struct {
	pools       map[entity.ProductCategory][]entity.ImageRef
	groupSample entity.ImageRef
}

// NewMockLibrary создаёт каталог с демонстрационными образцами
func NewMockLibrary() *StaticLibrary {
	return NewStaticLibrary(defaultPools, defaultGroupSample)
}

// NewStaticLibrary создаёт каталог из переданной таблицы
func NewStaticLibrary(pools map[entity.ProductCategory][]entity.ImageRef, groupSample entity.ImageRef) *StaticLibrary {
	cp := make(map[entity.ProductCategory][]entity.ImageRef, len(pools))
	for c, refs := range pools {
		cp[c] = append([]entity.ImageRef(nil), refs...)
	}
	return &StaticLibrary{pools: cp, groupSample: groupSample}
}

// Pool возвращает копию списка кандидатов категории
func (l *StaticLibrary) Pool(category entity.ProductCategory) []entity.ImageRef {
	return append([]entity.ImageRef(nil), l.pools[category]...)
}

// GroupSample возвращает образец для группового снимка
func (l *StaticLibrary) GroupSample() entity.ImageRef {
	return l.groupSample
}

var _ port.Library = (*StaticLibrary)(nil)
