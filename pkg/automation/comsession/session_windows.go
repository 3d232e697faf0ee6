//go:build windows

package comsession

import (
	"context"
	"fmt"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/osvalr/mmbridge/pkg/automation"
)

// session is the Windows COM implementation of automation.Session.
type session struct {
	pump *pump
	app  *ole.IDispatch
	// Sub-object handles vended during traversals. They are released with
	// the session; traversals are shallow, so the set stays small.
	children []*ole.IDispatch
}

// New attaches to a running (or COM-launched) MediaMonkey instance.
func New(opts Options) (automation.Session, error) {
	progID := opts.progID()
	s := &session{}

	p, err := newPump(
		func() error {
			if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
				return fmt.Errorf("initialize COM apartment: %w", err)
			}
			unknown, err := oleutil.CreateObject(progID)
			if err != nil {
				ole.CoUninitialize()
				return fmt.Errorf("create COM object %q (is MediaMonkey 5/2024 installed?): %w", progID, err)
			}
			app, err := unknown.QueryInterface(ole.IID_IDispatch)
			unknown.Release()
			if err != nil {
				ole.CoUninitialize()
				return fmt.Errorf("query IDispatch on %q: %w", progID, err)
			}
			s.app = app
			// Keep the application alive when we disconnect. Older builds
			// don't expose the property; that's fine.
			_, _ = oleutil.PutProperty(app, "ShutdownAfterDisconnect", false)
			return nil
		},
		func() {
			for _, d := range s.children {
				d.Release()
			}
			if s.app != nil {
				s.app.Release()
			}
			ole.CoUninitialize()
		},
	)
	if err != nil {
		return nil, err
	}
	s.pump = p
	return s, nil
}

func (s *session) App() automation.Object {
	return &object{sess: s, disp: s.app}
}

func (s *session) MenuScope(name string) (automation.Object, error) {
	ui, ok := automation.Child(s.App(), "UI")
	if !ok {
		return nil, fmt.Errorf("application exposes no UI object: %w", automation.ErrNoSuchScope)
	}
	scope, ok := automation.Child(ui, name)
	if !ok {
		return nil, fmt.Errorf("scope %q: %w", name, automation.ErrNoSuchScope)
	}
	return scope, nil
}

func (s *session) RunScript(ctx context.Context, source string, deliver automation.Deliver) error {
	return s.pump.Do(func() error {
		// runJSCode blocks until the script's callback fires and hands the
		// payload back as the return value.
		v, err := oleutil.CallMethod(s.app, "runJSCode", source, true)
		if err != nil {
			return fmt.Errorf("runJSCode: %w", err)
		}
		defer v.Clear()
		payload, _ := v.Value().(string)
		deliver(payload, nil)
		return nil
	})
}

func (s *session) Settings() automation.Store {
	return &iniStore{sess: s}
}

func (s *session) Close() error {
	s.pump.Close()
	return nil
}

// adopt registers a vended sub-object for release at session close and
// must be called on the pump thread.
func (s *session) adopt(d *ole.IDispatch) {
	s.children = append(s.children, d)
}

// object adapts one IDispatch to automation.Object, funnelling every call
// through the session pump.
type object struct {
	sess *session
	disp *ole.IDispatch
}

func (o *object) Prop(name string) (any, error) {
	var out any
	err := o.sess.pump.Do(func() error {
		v, err := oleutil.GetProperty(o.disp, name)
		if err != nil {
			return fmt.Errorf("get property %q: %w", name, err)
		}
		out = o.fromVariant(v)
		return nil
	})
	return out, err
}

func (o *object) SetProp(name string, value any) error {
	return o.sess.pump.Do(func() error {
		if _, err := oleutil.PutProperty(o.disp, name, value); err != nil {
			return fmt.Errorf("put property %q: %w", name, err)
		}
		return nil
	})
}

func (o *object) Call(name string, args ...any) (any, error) {
	var out any
	err := o.sess.pump.Do(func() error {
		v, err := oleutil.CallMethod(o.disp, name, args...)
		if err != nil {
			return fmt.Errorf("call %q: %w", name, err)
		}
		out = o.fromVariant(v)
		return nil
	})
	return out, err
}

// fromVariant unwraps a VARIANT into a Go scalar or a pump-affine
// sub-object. Runs on the pump thread.
func (o *object) fromVariant(v *ole.VARIANT) any {
	if disp := v.ToIDispatch(); disp != nil {
		disp.AddRef()
		v.Clear()
		o.sess.adopt(disp)
		return &object{sess: o.sess, disp: disp}
	}
	defer v.Clear()
	return v.Value()
}

// iniStore adapts SDBApplication.IniFile to automation.Store. Presence is
// probed with ValueExists so a missing key reads as absent, never as an
// error.
type iniStore struct {
	sess *session
}

func (st *iniStore) withIni(fn func(ini *ole.IDispatch) error) error {
	return st.sess.pump.Do(func() error {
		v, err := oleutil.GetProperty(st.sess.app, "IniFile")
		if err != nil {
			return fmt.Errorf("get IniFile: %w", err)
		}
		defer v.Clear()
		ini := v.ToIDispatch()
		if ini == nil {
			return fmt.Errorf("IniFile is not an object")
		}
		return fn(ini)
	})
}

func (st *iniStore) exists(ini *ole.IDispatch, section, key string) (bool, error) {
	v, err := oleutil.CallMethod(ini, "ValueExists", section, key)
	if err != nil {
		return false, fmt.Errorf("ValueExists: %w", err)
	}
	defer v.Clear()
	b, _ := v.Value().(bool)
	return b, nil
}

func (st *iniStore) read(prop, section, key string) (any, bool, error) {
	var out any
	var present bool
	err := st.withIni(func(ini *ole.IDispatch) error {
		ok, err := st.exists(ini, section, key)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		v, err := oleutil.GetProperty(ini, prop, section, key)
		if err != nil {
			return fmt.Errorf("get %s: %w", prop, err)
		}
		defer v.Clear()
		present = true
		out = v.Value()
		return nil
	})
	return out, present, err
}

func (st *iniStore) write(prop, section, key string, value any) error {
	return st.withIni(func(ini *ole.IDispatch) error {
		if _, err := oleutil.PutProperty(ini, prop, section, key, value); err != nil {
			return fmt.Errorf("put %s: %w", prop, err)
		}
		return nil
	})
}

func (st *iniStore) StringValue(section, key string) (string, bool, error) {
	v, present, err := st.read("StringValue", section, key)
	if err != nil || !present {
		return "", present, err
	}
	s, _ := v.(string)
	return s, true, nil
}

func (st *iniStore) IntValue(section, key string) (int, bool, error) {
	v, present, err := st.read("IntValue", section, key)
	if err != nil || !present {
		return 0, present, err
	}
	switch n := v.(type) {
	case int32:
		return int(n), true, nil
	case int64:
		return int(n), true, nil
	case int:
		return n, true, nil
	}
	return 0, true, nil
}

func (st *iniStore) BoolValue(section, key string) (bool, bool, error) {
	v, present, err := st.read("BoolValue", section, key)
	if err != nil || !present {
		return false, present, err
	}
	b, _ := v.(bool)
	return b, true, nil
}

func (st *iniStore) SetStringValue(section, key, value string) error {
	return st.write("StringValue", section, key, value)
}

func (st *iniStore) SetIntValue(section, key string, value int) error {
	return st.write("IntValue", section, key, value)
}

func (st *iniStore) SetBoolValue(section, key string, value bool) error {
	return st.write("BoolValue", section, key, value)
}

func (st *iniStore) Flush() error {
	return st.withIni(func(ini *ole.IDispatch) error {
		if _, err := oleutil.CallMethod(ini, "Flush"); err != nil {
			return fmt.Errorf("flush: %w", err)
		}
		return nil
	})
}

func (st *iniStore) Apply() error {
	if err := st.Flush(); err != nil {
		return err
	}
	// Nudge the application to pick the change up. Not every build
	// exposes the call; the flush above already made the write durable.
	_ = st.sess.pump.Do(func() error {
		_, _ = oleutil.CallMethod(st.sess.app, "RefreshConfig")
		return nil
	})
	return nil
}
