/*
   Licensed under the MIT License <http://opensource.org/licenses/MIT>.

   Copyright © 2023-2025 Seagate Technology LLC and/or its Affiliates
   Copyright © 2020-2025 Microsoft Corporation. All rights reserved.

   Permission is hereby granted, free of charge, to any person obtaining a copy
   of this software and associated documentation files (the "Software"), to deal
   in the Software without restriction, including without limitation the rights
   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
   copies of the Software, and to permit persons to whom the Software is
   furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in all
   copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
   SOFTWARE
*/

package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

//config is the common package to handle all configuration related functions of the tool
//Precedence order for retrieving config values is as follows:
//1. Flags
//2. Environment Variables
//3. Config file
//
//Any of the bind functions can be put even in init function. Calling of ReadFromConfigFile is not necessary for binding.
//Any reads must happen only after calling ReadFromConfigFile.

const STRUCT_TAG = "config"

type options struct {
	path string
}

var userOptions options

// ReadFromConfigFile is used to the configFilePath and initialize viper object
func ReadFromConfigFile(configFilePath string) error {
	userOptions.path = configFilePath
	viper.SetConfigType("yaml")
	viper.SetConfigFile(userOptions.path)
	return viper.ReadInConfig()
}

// ReadConfigFromReader loads yaml config data that does not live in a file
func ReadConfigFromReader(reader io.Reader) error {
	viper.SetConfigType("yaml")
	err := viper.ReadConfig(reader)
	if err != nil {
		return err
	}
	return nil
}

// ReadFromConfigBuffer loads yaml config data from memory
func ReadFromConfigBuffer(configData []byte) error {
	return ReadConfigFromReader(strings.NewReader(string(configData)))
}

// ConfigFilePath returns the file last given to ReadFromConfigFile
func ConfigFilePath() string {
	return userOptions.path
}

// BindEnv binds the key parameter to a particular environment variable
// For a hierarchical structure pass the keys separated by a .
// For examples to access "name" field in the following structure:
//
//	auth:
//		name: value
//
// the key parameter should take on the value "auth.key"
func BindEnv(key string, envVarName string) {
	_ = viper.BindEnv(key, envVarName)
}

// BindPFlag binds the key parameter to a particular flag
// For a hierarchical structure pass the keys separated by a .
// A flag only wins over the config file when it was set on the command line.
func BindPFlag(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	_ = viper.BindPFlag(key, flag)
}

// UnmarshalKey is used to obtain a subtree starting from the key parameter
// For a hierarchical structure pass the keys separated by a .
// For examples to access "name" field in the following structure:
//
//	auth:
//		name: value
//
// the key parameter should take on the value "auth.key"
func UnmarshalKey(key string, obj interface{}) error {
	// AllSettings merges bound flags into nested sections, viper.UnmarshalKey does not
	var node interface{} = viper.AllSettings()
	for _, k := range strings.Split(strings.ToLower(key), ".") {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil
		}
		node = m[k]
	}
	if node == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          STRUCT_TAG,
		Result:           obj,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("config error: unmarshalling [%v]", err)
	}

	err = decoder.Decode(node)
	if err != nil {
		return fmt.Errorf("config error: unmarshalling [%v]", err)
	}
	return nil
}

// Unmarshal populates the passed object and all the exported fields.
// use lower case attribute names to ignore a particular field
func Unmarshal(obj interface{}) error {
	err := viper.Unmarshal(
		obj,
		func(decodeConfig *mapstructure.DecoderConfig) { decodeConfig.TagName = STRUCT_TAG },
	)
	if err != nil {
		return fmt.Errorf("config error: unmarshalling [%v]", err)
	}
	return nil
}

func IsSet(key string) bool {
	return viper.IsSet(key)
}

func ResetConfig() {
	viper.Reset()
	userOptions = options{}
}
