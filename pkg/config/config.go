package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/radovskyb/watcher"
	"gopkg.in/yaml.v3"

	"github.com/forest33/shark/pkg/logger"
	"github.com/forest33/shark/pkg/structs"
)

const (
	tagDefault = "default"
	envPath    = "SHARK_CONFIG"
)

type Config struct {
	path      string
	data      interface{}
	log       *logger.Logger
	observers []func(interface{})
	mux       sync.Mutex
}

// New loads configuration from SHARK_CONFIG, configFileDir or the executable directory
func New(configFileName, configFileDir string, cfg interface{}) (*Config, error) {
	path, ok := os.LookupEnv(envPath)
	if !ok {
		if configFileDir != "" {
			path = filepath.Join(configFileDir, configFileName)
		} else {
			ex, err := os.Executable()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(filepath.Dir(ex), configFileName)
		}
	}

	return Load(path, cfg)
}

// Load loads configuration from path. A missing file leaves defaults only.
func Load(path string, cfg interface{}) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := Parse(cfg); err != nil {
		return nil, err
	}

	return &Config{
		path:      path,
		data:      cfg,
		observers: make([]func(interface{}), 0, 1),
		log:       logger.NewDefault(),
	}, nil
}

func (c *Config) Update(data interface{}) {
	c.mux.Lock()
	c.data = data
	c.mux.Unlock()
}

func (c *Config) Save() error {
	c.mux.Lock()
	defer c.mux.Unlock()

	buf, err := yaml.Marshal(c.data)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(c.path, buf, 0664); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) GetPath() string {
	return c.path
}

// AddObserver registers f to be called after the config file changes and is parsed again
func (c *Config) AddObserver(f func(interface{})) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	if len(c.observers) == 0 {
		if err := c.startWatcher(); err != nil {
			return err
		}
	}
	c.observers = append(c.observers, f)
	return nil
}

func (c *Config) startWatcher() error {
	w := watcher.New()
	w.SetMaxEvents(1)
	w.FilterOps(watcher.Write)
	if err := w.Add(c.path); err != nil {
		return err
	}

	go func() {
		defer w.Close()
		if err := w.Start(time.Second); err != nil {
			c.log.Error().Err(err).Msg("failed to start watching config file")
		}
	}()

	go func() {
		for {
			select {
			case <-w.Event:
				c.log.Info().Str("path", c.path).Msg("config file changed")
				if err := c.Reload(); err != nil {
					c.log.Error().Err(err).Str("path", c.path).Msg("failed to reload config file")
				}
			case err := <-w.Error:
				c.log.Error().Err(err).Msg("error on watching config file")
			case <-w.Closed:
				return
			}
		}
	}()

	return nil
}

// Reload parses the config file into a fresh value of the same type and passes
// it to the observers. The previously loaded value is left untouched.
func (c *Config) Reload() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	c.mux.Lock()
	defer c.mux.Unlock()

	fresh := reflect.New(reflect.TypeOf(c.data).Elem()).Interface()
	if err = yaml.Unmarshal(data, fresh); err != nil {
		return fmt.Errorf("failed to unmarshal config file: %w", err)
	}
	if err := Parse(fresh); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	c.data = fresh
	for i := range c.observers {
		c.observers[i](c.data)
	}

	return nil
}

// Parse applies `default` tags to unset fields and descends into nested struct pointers
func Parse(target interface{}) error {
	ref := reflect.Indirect(reflect.ValueOf(target))
	for i := 0; i < ref.Type().NumField(); i++ {
		structField := ref.Type().Field(i)
		fieldValue := ref.Field(i)

		if !structField.IsExported() || isSet(structField, &fieldValue) {
			continue
		}

		defaultTagValue, defaultTagExists := structField.Tag.Lookup(tagDefault)

		if defaultTagExists {
			if err := setValue(structField, &fieldValue, defaultTagValue); err != nil {
				return err
			}
			continue
		}

		if fieldValue.IsZero() && !isOptional(structField.Type.Kind()) {
			return fmt.Errorf("required configuration parameter is not specified - %s.%s", ref.Type().Name(), structField.Name)
		}

		if structField.Type.Kind() == reflect.Ptr || structField.Type.Kind() == reflect.Slice {
			if err := setValue(structField, &fieldValue, ""); err != nil {
				return err
			}
		}
	}

	return nil
}

func isOptional(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool, reflect.Ptr, reflect.Slice, reflect.Map:
		return true
	}
	return false
}

func isSet(structField reflect.StructField, field *reflect.Value) bool {
	kind := structField.Type.Kind()
	if kind == reflect.Ptr && structField.Type.String() == "*bool" && !field.IsNil() {
		return true
	}
	if kind != reflect.Ptr && kind != reflect.Slice && !field.IsZero() {
		return true
	}
	return false
}

func setValue(structField reflect.StructField, field *reflect.Value, value string) error {
	switch structField.Type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(value, 10, int(structField.Type.Size()*8))
		if err != nil {
			return err
		}
		field.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(value, 10, int(structField.Type.Size()*8))
		if err != nil {
			return err
		}
		field.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(value, int(structField.Type.Size()*8))
		if err != nil {
			return err
		}
		field.SetFloat(v)
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		field.SetBool(strings.ToLower(value) == "true")
	case reflect.Ptr:
		if structField.Type.String() == "*bool" {
			field.Set(reflect.ValueOf(structs.Ref(strings.ToLower(value) == "true")))
			return nil
		}
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return Parse(field.Interface())
	case reflect.Slice:
		if len(value) > 0 {
			values := strings.Split(value, ",")
			sl := reflect.MakeSlice(field.Type(), len(values), len(values))
			for i, val := range values {
				sl.Index(i).Set(reflect.ValueOf(val))
			}
			field.Set(sl)
		} else {
			for i := 0; i < field.Len(); i++ {
				if err := Parse(field.Index(i).Interface()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
